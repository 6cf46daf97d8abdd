package render

// All programs share the vertex attribute and matrix names raylib binds automatically.
// texture0/1/2 are the albedo, metalness (used as specular) and normal (used as bump) map
// slots of the material.

const (
	surfaceVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
out vec4 fragColor;
out float fragDepth;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  vec4 viewPos = matView * worldPos;
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  fragColor = vertexColor;
  fragDepth = -viewPos.z;
  gl_Position = matProjection * viewPos;
}
`

	// standardFS is diffuse + specular from one directional light plus ambient, with optional
	// specular and bump maps, vertex colors and linear fog.
	standardFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
in vec4 fragColor;
in float fragDepth;
uniform sampler2D texture0;
uniform sampler2D texture1;
uniform sampler2D texture2;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 lightDir;
uniform vec3 lightColor;
uniform float hasLight;
uniform float hasSpecular;
uniform float hasBump;
uniform float bumpScale;
uniform float shininess;
uniform float opacity;
uniform float useVertexColor;
uniform float hasFog;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;
out vec4 finalColor;

vec2 dHdxy() {
  vec2 dSTdx = dFdx(fragTexCoord);
  vec2 dSTdy = dFdy(fragTexCoord);
  float hll = bumpScale * texture(texture2, fragTexCoord).x;
  float dBx = bumpScale * texture(texture2, fragTexCoord + dSTdx).x - hll;
  float dBy = bumpScale * texture(texture2, fragTexCoord + dSTdy).x - hll;
  return vec2(dBx, dBy);
}

vec3 perturbNormalArb(vec3 surfPos, vec3 surfNorm, vec2 dHdxy, float faceDir) {
  vec3 sigmaX = dFdx(surfPos);
  vec3 sigmaY = dFdy(surfPos);
  vec3 r1 = cross(sigmaY, surfNorm);
  vec3 r2 = cross(surfNorm, sigmaX);
  float det = dot(sigmaX, r1) * faceDir;
  vec3 grad = sign(det) * (dHdxy.x * r1 + dHdxy.y * r2);
  return normalize(abs(det) * surfNorm - grad);
}

void main() {
  vec4 base = texture(texture0, fragTexCoord) * colDiffuse;
  if (useVertexColor > 0.5) base.rgb *= fragColor.rgb;
  float faceDir = gl_FrontFacing ? 1.0 : -1.0;
  vec3 n = normalize(fragNormal) * faceDir;
  if (hasBump > 0.5) n = perturbNormalArb(fragPosition, n, dHdxy(), faceDir);

  vec3 color = ambient * base.rgb;
  if (hasLight > 0.5) {
    vec3 l = normalize(lightDir);
    float ndl = max(dot(n, l), 0.0);
    color += base.rgb * lightColor * ndl;
    if (hasSpecular > 0.5 && ndl > 0.0) {
      vec3 v = normalize(viewPos - fragPosition);
      vec3 h = normalize(l + v);
      float spec = pow(max(dot(n, h), 0.0), shininess) * texture(texture1, fragTexCoord).r;
      color += lightColor * spec;
    }
  }
  if (hasFog > 0.5) color = mix(color, fogColor, smoothstep(fogNear, fogFar, fragDepth));
  finalColor = vec4(color, base.a * opacity);
}
`

	// basicFS ignores lights.
	basicFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
in vec4 fragColor;
in float fragDepth;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float opacity;
uniform float useVertexColor;
uniform float hasFog;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;
out vec4 finalColor;
void main() {
  vec4 base = texture(texture0, fragTexCoord) * colDiffuse;
  if (useVertexColor > 0.5) base.rgb *= fragColor.rgb;
  vec3 color = base.rgb;
  if (hasFog > 0.5) color = mix(color, fogColor, smoothstep(fogNear, fogFar, fragDepth));
  finalColor = vec4(color, base.a * opacity);
}
`

	atmosphereVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 vNormal;
void main() {
  vNormal = normalize(mat3(matView) * mat3(matNormal) * vertexNormal);
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`

	// atmosphereFS glows where the view-space normal turns away from the camera.
	atmosphereFS = `#version 330
in vec3 vNormal;
uniform vec4 colDiffuse;
out vec4 finalColor;
void main() {
  float intensity = pow(max(0.6 - dot(vNormal, vec3(0.0, 0.0, 1.0)), 0.0), 2.0);
  finalColor = vec4(colDiffuse.rgb, 1.0) * intensity;
}
`
)
